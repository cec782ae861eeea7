package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Sort string

const (
	SortDefault   Sort = ""
	SortTitle     Sort = "title"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNewest    Sort = "newest"
	SortOldest    Sort = "oldest"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Query is a listing request as the browse screen sends it.
type Query struct {
	Search        string
	SubCategoryID int64
	SupCategoryID int64
	AuthorID      int64
	PublisherID   int64
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	Sort          Sort
	Page          int
	Size          int
}

func ParseQuery(v url.Values) (Query, error) {
	q := Query{
		Search: strings.TrimSpace(v.Get("search")),
		Sort:   Sort(v.Get("sort")),
		Page:   1,
		Size:   DefaultPageSize,
	}

	var err error
	if q.SubCategoryID, err = int64Param(v, "category"); err != nil {
		return Query{}, err
	}
	if q.SupCategoryID, err = int64Param(v, "supCategory"); err != nil {
		return Query{}, err
	}
	if q.AuthorID, err = int64Param(v, "author"); err != nil {
		return Query{}, err
	}
	if q.PublisherID, err = int64Param(v, "publisher"); err != nil {
		return Query{}, err
	}
	if q.MinPrice, err = decimalParam(v, "minPrice"); err != nil {
		return Query{}, err
	}
	if q.MaxPrice, err = decimalParam(v, "maxPrice"); err != nil {
		return Query{}, err
	}

	switch q.Sort {
	case SortDefault, SortTitle, SortPriceAsc, SortPriceDesc, SortNewest, SortOldest:
	default:
		return Query{}, fmt.Errorf("unknown sort %q", q.Sort)
	}

	if s := v.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Query{}, fmt.Errorf("page must be a positive number")
		}
		q.Page = n
	}
	if s := v.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Query{}, fmt.Errorf("size must be a positive number")
		}
		q.Size = min(n, MaxPageSize)
	}
	return q, nil
}

func int64Param(v url.Values, key string) (int64, error) {
	s := v.Get(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return n, nil
}

func decimalParam(v url.Values, key string) (*decimal.Decimal, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &d, nil
}
