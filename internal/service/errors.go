package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrClientNotFound is returned when a client is not found
	ErrClientNotFound = errors.New("client not found")

	// ErrDuplicateRUT is returned when a client with the same RUT already exists
	ErrDuplicateRUT = errors.New("client with this RUT already exists")

	// ErrCatalogItemNotFound is returned when a catalog item is not found
	ErrCatalogItemNotFound = errors.New("catalog item not found")

	// ErrCatalogItemInUse is returned when deleting a catalog item still referenced by quotes
	ErrCatalogItemInUse = errors.New("catalog item is referenced by quote line items")

	// ErrInvalidCatalogType is returned when an unknown catalog item type is provided
	ErrInvalidCatalogType = errors.New("invalid catalog item type")

	// ErrQuoteNotFound is returned when a quote is not found
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrQuoteNotEditable is returned when mutating inputs of a closed quote
	ErrQuoteNotEditable = errors.New("quote is not editable in its current status")

	// ErrInvalidStatusTransition is returned for illegal quote lifecycle moves
	ErrInvalidStatusTransition = errors.New("invalid quote status transition")

	// ErrPositionNotFound is returned when a position is not found
	ErrPositionNotFound = errors.New("position not found")

	// ErrCostItemNotFound is returned when a quote cost entry is not found
	ErrCostItemNotFound = errors.New("cost entry not found")

	// ErrFileNotFound is returned when a file is not found
	ErrFileNotFound = errors.New("file not found")

	// ErrFileTooLarge is returned when an upload exceeds the configured limit
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")

	// ErrERPUnavailable is returned when the ERP connection is disabled or down
	ErrERPUnavailable = errors.New("ERP connection not available")
)
