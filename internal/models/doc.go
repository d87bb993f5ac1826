// Package models declares the GORM models of the site content and the
// tolerant column types they persist lists and settings with.
package models

//go:generate go run ../../tools .
