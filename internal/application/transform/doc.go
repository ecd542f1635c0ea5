// Package transform implements the text transformations served by the API.
package transform
