package blogservice

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sushihentaime/globalaffair/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(v.NotBlank(title), "title", "must be provided")
	v.Check(v.CheckStringLength(title, 0, 200), "title", "must not be more than 200 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(v.NotBlank(body), "body", "must be provided")
	v.Check(len(body) <= 100_000, "body", "must not be more than 100000 bytes long")
}

func validateCoverImageURL(v *common.Validator, url string) {
	v.Check(url != "", "coverImage", "must be provided")
	v.Check(url == "" || strings.HasPrefix(url, "/uploads/"), "coverImage", "must be an uploaded file")
}

func validateContent(v *common.Validator, content string) {
	v.Check(v.NotBlank(content), "content", "must be provided")
	v.Check(v.CheckStringLength(content, 1, 2000), "content", "must not be more than 2000 characters long")
}

func validateObjectID(v *common.Validator, id primitive.ObjectID, name string) {
	v.Check(!id.IsZero(), name, "must be provided")
}
