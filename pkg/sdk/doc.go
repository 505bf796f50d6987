// Package booksearch is a Go client for the booksearch HTTP API.
//
// Usage:
//
//	client, err := booksearch.New("http://localhost:8080",
//		booksearch.WithAPIKey("key-1"),
//	)
//	rows, err := client.SearchAuthors(ctx, "Tolkien",
//		booksearch.PublishedBy("1954-07-29"),
//	)
package booksearch
