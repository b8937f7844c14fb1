package domain

// KeyPrefix namespaces every store key and index name.
// Overridden from config at startup.
var KeyPrefix = "propmatch:"
