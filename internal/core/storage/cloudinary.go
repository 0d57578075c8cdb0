package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	if cloudName == "" {
		return nil, errors.New("cloudinary cloud_name is not configured")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Put(ctx context.Context, kind Kind, name string, r io.Reader) (Object, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     strings.TrimSuffix(name, path.Ext(name)),
		Folder:       path.Join(c.folder, string(kind)),
		ResourceType: "auto",
	})
	if err != nil {
		return Object{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return Object{}, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return Object{URL: res.SecureURL, Name: name}, nil
}
