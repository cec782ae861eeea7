package apiclient

import (
	"context"
	"io"
	"net/http"
)

// UploadImage stores an image under folder and returns the server path.
func (c *Client) UploadImage(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	var out string
	fields := map[string]string{"folder": folder}
	files := []formFile{{field: "file", name: filename, r: r}}
	return out, c.sendMultipart(ctx, http.MethodPost, "/upload/image", fields, files, &out)
}
