package dto

type Filter struct {
	Limit   int  `query:"limit"`
	Page    int  `query:"page"`
	Deleted bool `query:"deleted"`
}

type PaginationMetadata struct {
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

type Pagination struct {
	Records  interface{}        `json:"records"`
	Metadata PaginationMetadata `json:"metadata"`
}
