// Package utils provides common text helpers for the stock-reconciler application.
// It includes case and diacritic folding used to match CSV headers and free-text
// fields that come from Spanish-language exports.
package utils
