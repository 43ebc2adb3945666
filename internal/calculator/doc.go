// Package calculator derives invoice amounts from user-entered line items.
package calculator
