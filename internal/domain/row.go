package domain

// Row is a single result row returned by a catalog search function,
// keyed by column name. The service does not interpret row contents;
// the shape is defined entirely by the database function.
type Row map[string]any
