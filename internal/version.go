package internal

// Version is the codewise release, reported by --version.
const Version = "v0.3.1"
