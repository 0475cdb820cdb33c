package service

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePaging clamps page/limit to sane values: 1-based page, default
// limit 20, hard cap 100.
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
