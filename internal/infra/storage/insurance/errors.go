package insurance

import "errors"

var (
	ErrProductNotFound = errors.New("storage/insurance: product not found")
	ErrPolicyNotFound  = errors.New("storage/insurance: policy not found")
	ErrClaimNotFound   = errors.New("storage/insurance: claim not found")
	ErrClaimReviewed   = errors.New("storage/insurance: claim already reviewed")
	ErrBuildQuery      = errors.New("storage/insurance: failed to build query")
	ErrExecQuery       = errors.New("storage/insurance: failed to execute query")
	ErrScanRow         = errors.New("storage/insurance: failed to scan row")
)
