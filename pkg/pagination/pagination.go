package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultSize is the default number of items per page
const DefaultSize = 20

// MaxSize is the maximum number of items per page
const MaxSize = 100

// Params represents pagination parameters taken from the query string
type Params struct {
	Page   int // zero-based page index
	Size   int
	Offset int
}

// Page is the paged response envelope: content plus page metadata.
type Page struct {
	Content       interface{} `json:"content"`
	Number        int         `json:"number"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
}

// GetParams extracts page/size from the request, clamping to sane bounds.
func GetParams(c *gin.Context) Params {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultSize)))

	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return Params{
		Page:   page,
		Size:   size,
		Offset: page * size,
	}
}

// NewPage builds the response envelope for one page of content.
func NewPage(content interface{}, params Params, total int64) Page {
	totalPages := int(total) / params.Size
	if int(total)%params.Size != 0 {
		totalPages++
	}

	return Page{
		Content:       content,
		Number:        params.Page,
		Size:          params.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
