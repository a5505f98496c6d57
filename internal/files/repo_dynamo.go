package files

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"filebox-backend/internal/shared/storage/object"
)

// DynamoRepo implements Repo against two DynamoDB tables: uploads keyed by
// file_id and downloads keyed by id. Lookups by filename are full-table
// scans with a filter expression; there is no secondary index, which is a
// known scalability limitation of this layout.
type DynamoRepo struct {
	client        *dynamodb.Client
	uploadTable   string
	downloadTable string
	noCreds       bool
}

// NewDynamoRepo constructs a DynamoRepo over an existing client. When the
// deployment carries no static credentials, every operation reports
// object.ErrNoCredentials instead of a generic SDK failure.
func NewDynamoRepo(client *dynamodb.Client, uploadTable, downloadTable string, noCreds bool) *DynamoRepo {
	return &DynamoRepo{
		client:        client,
		uploadTable:   uploadTable,
		downloadTable: downloadTable,
		noCreds:       noCreds,
	}
}

// Dates are stored as ISO-8601 strings, not native number timestamps, so the
// items stay readable next to records written by other tooling.
type uploadItem struct {
	FileID       string `dynamodbav:"file_id"`
	Filename     string `dynamodbav:"filename"`
	Size         int64  `dynamodbav:"size"`
	Description  string `dynamodbav:"description"`
	UploadDate   string `dynamodbav:"upload_date"`
	DeletionDate string `dynamodbav:"deletion_date,omitempty"`
}

type downloadItem struct {
	ID           string `dynamodbav:"id"`
	Filename     string `dynamodbav:"filename"`
	DownloadDate string `dynamodbav:"download_date"`
	DownloaderIP string `dynamodbav:"downloader_ip"`
}

// CreateUpload puts a new upload item. The deletion_date attribute is
// omitted entirely on live records so the listing filter's
// attribute_not_exists clause matches them.
func (r *DynamoRepo) CreateUpload(ctx context.Context, rec UploadRecord) error {
	if r.noCreds {
		return object.ErrNoCredentials
	}

	av, err := attributevalue.MarshalMap(toUploadItem(rec))
	if err != nil {
		return fmt.Errorf("marshal upload item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.uploadTable),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put item table=%s: %w", r.uploadTable, err)
	}
	return nil
}

// FindByFilename scans for items with an exact filename match, deleted
// records included, and returns the first one in DynamoDB's scan order.
func (r *DynamoRepo) FindByFilename(ctx context.Context, filename string) (UploadRecord, error) {
	if r.noCreds {
		return UploadRecord{}, object.ErrNoCredentials
	}

	filt := expression.Name("filename").Equal(expression.Value(filename))
	expr, err := expression.NewBuilder().WithFilter(filt).Build()
	if err != nil {
		return UploadRecord{}, fmt.Errorf("build filter expression: %w", err)
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.uploadTable),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return UploadRecord{}, fmt.Errorf("dynamodb scan table=%s: %w", r.uploadTable, err)
	}
	if len(out.Items) == 0 {
		return UploadRecord{}, ErrNotFound
	}

	var item uploadItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return UploadRecord{}, fmt.Errorf("unmarshal upload item: %w", err)
	}
	return fromUploadItem(item)
}

// MarkDeleted sets the deletion_date attribute on the item with the given
// file ID.
func (r *DynamoRepo) MarkDeleted(ctx context.Context, fileID string, deletedAt time.Time) error {
	if r.noCreds {
		return object.ErrNoCredentials
	}

	update := expression.Set(
		expression.Name("deletion_date"),
		expression.Value(deletedAt.UTC().Format(time.RFC3339Nano)),
	)
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("build update expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.uploadTable),
		Key: map[string]dynamotypes.AttributeValue{
			"file_id": &dynamotypes.AttributeValueMemberS{Value: fileID},
		},
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("dynamodb update item table=%s: %w", r.uploadTable, err)
	}
	return nil
}

// ListLive scans for items whose deletion_date is absent or empty.
func (r *DynamoRepo) ListLive(ctx context.Context) ([]UploadRecord, error) {
	if r.noCreds {
		return nil, object.ErrNoCredentials
	}

	filt := expression.AttributeNotExists(expression.Name("deletion_date")).
		Or(expression.Name("deletion_date").Equal(expression.Value("")))
	expr, err := expression.NewBuilder().WithFilter(filt).Build()
	if err != nil {
		return nil, fmt.Errorf("build filter expression: %w", err)
	}

	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.uploadTable),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb scan table=%s: %w", r.uploadTable, err)
	}

	records := make([]UploadRecord, 0, len(out.Items))
	for _, raw := range out.Items {
		var item uploadItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("unmarshal upload item: %w", err)
		}
		rec, err := fromUploadItem(item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// CreateDownload puts a new download item.
func (r *DynamoRepo) CreateDownload(ctx context.Context, rec DownloadRecord) error {
	if r.noCreds {
		return object.ErrNoCredentials
	}

	av, err := attributevalue.MarshalMap(downloadItem{
		ID:           rec.ID,
		Filename:     rec.Filename,
		DownloadDate: rec.DownloadDate.UTC().Format(time.RFC3339Nano),
		DownloaderIP: rec.DownloaderIP,
	})
	if err != nil {
		return fmt.Errorf("marshal download item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.downloadTable),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put item table=%s: %w", r.downloadTable, err)
	}
	return nil
}

func toUploadItem(rec UploadRecord) uploadItem {
	item := uploadItem{
		FileID:      rec.FileID,
		Filename:    rec.Filename,
		Size:        rec.Size,
		Description: rec.Description,
		UploadDate:  rec.UploadDate.UTC().Format(time.RFC3339Nano),
	}
	if rec.DeletionDate != nil {
		item.DeletionDate = rec.DeletionDate.UTC().Format(time.RFC3339Nano)
	}
	return item
}

func fromUploadItem(item uploadItem) (UploadRecord, error) {
	uploadDate, err := time.Parse(time.RFC3339Nano, item.UploadDate)
	if err != nil {
		return UploadRecord{}, fmt.Errorf("parse upload_date %q: %w", item.UploadDate, err)
	}
	rec := UploadRecord{
		FileID:      item.FileID,
		Filename:    item.Filename,
		Size:        item.Size,
		Description: item.Description,
		UploadDate:  uploadDate,
	}
	if item.DeletionDate != "" {
		deletionDate, err := time.Parse(time.RFC3339Nano, item.DeletionDate)
		if err != nil {
			return UploadRecord{}, fmt.Errorf("parse deletion_date %q: %w", item.DeletionDate, err)
		}
		rec.DeletionDate = &deletionDate
	}
	return rec, nil
}

var _ Repo = (*DynamoRepo)(nil)
