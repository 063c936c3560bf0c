// Package frame owns the fixed frame header contract and raw frame IO.
package frame
