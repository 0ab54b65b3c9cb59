package intervals

// Version is the current release of the client library.
const Version = "1.0.0"
