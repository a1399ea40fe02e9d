package storage

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/framesight/visual-measure/internal/measure"
)

// AzureBlobResolver resolves azblob:// sources of the form
// azblob://container?blob=path/to/image.jpg against Azure Blob Storage
// using a shared-key credential. The storage account is fixed at
// construction time.
type AzureBlobResolver struct {
	client  *azblob.Client
	maxSide int
}

func NewAzureBlobResolver(accountName, accountKey string, maxSide int) (*AzureBlobResolver, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureBlobResolver{client: client, maxSide: maxSide}, nil
}

func (s *AzureBlobResolver) Resolve(ctx context.Context, source string) (*measure.ImageBuffer, error) {
	parsedURL, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("invalid blob URL: %w", err)
	}

	containerName := parsedURL.Host
	if containerName == "" && len(parsedURL.Path) > 1 {
		containerName = parsedURL.Path[1:]
	}
	blobName := parsedURL.Query().Get("blob")
	if containerName == "" || blobName == "" {
		return nil, fmt.Errorf("blob URL must name a container and a blob query parameter")
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	return decodeToBuffer(retryReader, s.maxSide)
}
