package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // uploaded gift images may be PNG
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/image/draw"
)

const (
	giftImageMaxSize = 1024
	giftImageQuality = 85
)

// GiftStorage uploads gift images to an S3-compatible bucket and hands
// back their public URLs.
type GiftStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewGiftStorage connects to the object store. publicURL is the base
// under which uploaded objects are reachable, e.g.
// "https://storage.example.com/effortree-bucket".
func NewGiftStorage(endpoint, accessKey, secretKey, bucket, publicURL string, useSSL bool) (*GiftStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object storage client: %w", err)
	}

	return &GiftStorage{
		client:    client,
		bucket:    bucket,
		publicURL: publicURL,
	}, nil
}

// UploadGiftImage resizes the uploaded image and stores it as a JPEG
// under objectName. Returns the public URL of the stored object.
func (s *GiftStorage) UploadGiftImage(ctx context.Context, objectName string, r io.Reader) (string, error) {
	resized, err := ResizeImage(r, giftImageMaxSize)
	if err != nil {
		return "", fmt.Errorf("resizing image: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(resized), int64(len(resized)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, objectName), nil
}

// ResizeImage decodes a JPEG or PNG and scales it down so neither
// dimension exceeds maxSize, preserving aspect ratio. Images already
// within bounds are re-encoded without scaling.
func ResizeImage(r io.Reader, maxSize int) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxSize || h > maxSize {
		if w >= h {
			h = h * maxSize / w
			w = maxSize
		} else {
			w = w * maxSize / h
			h = maxSize
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: giftImageQuality}); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}
