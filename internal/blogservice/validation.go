package blogservice

import (
	"github.com/sushihentaime/blogdocs/internal/common"
)

func validateBlogID(v *common.Validator, blogID string) {
	v.Required(blogID, "blogId")
}

func validateFilter(v *common.Validator, field Field, value string) {
	v.Required(value, string(field))
}

// validateCreate only enforces presence; title and bodyHtml carry `validate:"required"`.
func validateCreate(v *common.Validator, req *CreateBlogRequest) {
	v.ValidateStruct(req)
}
