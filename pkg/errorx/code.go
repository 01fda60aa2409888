package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Internal         Code = 100007
	Unavailable      Code = 100008
	TooManyRequests  Code = 100010

	// Submission codes
	Validation        Code = 200001
	InsufficientFunds Code = 200002
	WalletNotReady    Code = 200003
	UnsupportedChain  Code = 200004
	InProgress        Code = 200005

	// Transaction codes
	ApproveFailed Code = 300001
	PayFailed     Code = 300002

	// Backend codes
	Backend   Code = 400001
	AIService Code = 400002
)
