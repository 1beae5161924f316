package cloudinary

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

func New() (*cloudinary.Cloudinary, error) {
	// reads CLOUDINARY_URL from the environment
	return cloudinary.New()
}
