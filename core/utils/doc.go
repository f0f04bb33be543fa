// Package utils provides type conversion helpers for loosely typed upstream data,
// such as hour fields that arrive as integers from MySQL, floats from JSON or
// strings from a spreadsheet export, and the request validator shared by the
// HTTP handlers.
package utils
