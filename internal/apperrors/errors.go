package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrAccountNotFound indicates that an account with the given ID or name does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDirectionNotFound indicates that a bias record with the given ID does not exist.
	ErrDirectionNotFound = errors.New("direction record not found")

	// ErrPreviewNotFound indicates that an import preview does not exist or has expired.
	ErrPreviewNotFound = errors.New("import preview not found or expired")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicateAccount indicates that an account with the same name already exists.
	// Trades reference accounts by name, so names must stay unique.
	ErrDuplicateAccount = errors.New("account name already exists")

	// ErrNoClosedTrades indicates that a report contained no decodable closed trades.
	ErrNoClosedTrades = errors.New("No valid closed trades found. Ensure this is a 'History' or 'Report' export from MT5 containing a 'Closed Transactions' table.")

	// ErrUnsupportedReport indicates an upload that is not an HTML report.
	ErrUnsupportedReport = errors.New("unsupported report format, expected .html or .htm")

	// ErrInvalidBackup indicates a restore payload without trades and accounts.
	ErrInvalidBackup = errors.New("invalid backup file")

	// ErrOperationInFlight indicates that the same AI operation is already running for the user.
	ErrOperationInFlight = errors.New("operation already in progress")

	// ErrInvalidImage indicates an image payload that is not valid base64 or a data URL.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidID indicates that a required ID parameter is empty or malformed.
	ErrInvalidID = errors.New("invalid ID")
)

// AI service errors distinguish a rate limit, which the user can wait out,
// from every other failure.
var (
	// ErrAIQuotaExceeded indicates the model service rejected the call for quota or rate limits.
	ErrAIQuotaExceeded = errors.New("AI quota exceeded, please retry after a short delay")

	// ErrAIUnavailable indicates any other model service failure.
	ErrAIUnavailable = errors.New("AI service request failed")

	// ErrAIMalformedResponse indicates the model returned output that could not be decoded.
	ErrAIMalformedResponse = errors.New("AI service returned a malformed response")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveTrades     = errors.New("failed to retrieve trades")
	ErrFailedToRetrieveAccounts   = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveDirections = errors.New("failed to retrieve direction history")
	ErrFailedToBuildDashboard     = errors.New("failed to build dashboard")
	ErrFailedToSaveLedger         = errors.New("failed to save ledger")
	ErrFailedToImport             = errors.New("failed to import trades")
	ErrFailedToExportBackup       = errors.New("failed to export backup")
	ErrFailedToRestoreBackup      = errors.New("failed to restore backup")
	ErrFailedToGetVersionInfo     = errors.New("failed to get version information")
)
