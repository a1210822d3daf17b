package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// FindFile returns the id of the first non-trashed file called name in folderID, or ""
func (ds *DriveService) FindFile(ctx context.Context, folderID, name string) (string, error) {
	query := fmt.Sprintf("'%s' in parents and name = '%s' and trashed=false",
		escapeDriveQuery(folderID), escapeDriveQuery(name))

	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name)").
			SupportsAllDrives(true).
			IncludeItemsFromAllDrives(true).
			Context(ctx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("failed to list files: %w", err)
		}
		for _, f := range r.Files {
			if f.Name == name {
				return f.Id, nil
			}
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			return "", nil
		}
	}
}

// UploadFile stores data as name inside folderID, replacing the content of an existing
// file with the same name. Returns the Drive file id.
func (ds *DriveService) UploadFile(ctx context.Context, folderID, name, mimeType string, data []byte) (string, error) {
	existingID, err := ds.FindFile(ctx, folderID, name)
	if err != nil {
		return "", err
	}

	if existingID != "" {
		log.Infof("♻️  Replacing Drive file %s (%s)", name, existingID)
		f, err := ds.client.Files.Update(existingID, &drive.File{MimeType: mimeType}).
			Media(bytes.NewReader(data)).
			SupportsAllDrives(true).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to update file %s: %w", name, err)
		}
		return f.Id, nil
	}

	f, err := ds.client.Files.Create(&drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{folderID},
	}).
		Media(bytes.NewReader(data)).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s: %w", name, err)
	}

	log.Infof("☁️  Uploaded %s to Drive folder %s (%s)", name, folderID, f.Id)
	return f.Id, nil
}

// escapeDriveQuery escapes a value for a single-quoted Drive query string
func escapeDriveQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
