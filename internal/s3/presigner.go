package s3

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// coverKeyPrefix namespaces material cover images inside the bucket,
// one folder per tutor.
const coverKeyPrefix = "material-covers"

const uploadURLTTL = 15 * time.Minute

// FilePresigner hands out short-lived PUT URLs so cover images go
// straight from the browser to the bucket.
type FilePresigner struct {
	S3PresignClient *s3.PresignClient
	BucketName      string
	endpoint        string
}

func NewFilePresigner() (*FilePresigner, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	region := os.Getenv("AWS_REGION")
	bucketName := os.Getenv("S3_BUCKET_NAME")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	usePathStyle := os.Getenv("S3_USE_PATH_STYLE") == "true"

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpoint,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(
		context.TODO(),
		config.WithRegion(region),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)

	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = usePathStyle
	})

	presignClient := s3.NewPresignClient(s3Client)

	return &FilePresigner{
		S3PresignClient: presignClient,
		BucketName:      bucketName,
		endpoint:        endpoint,
	}, nil
}

// CoverObjectKey mints a fresh object key for one tutor's cover image.
func (p *FilePresigner) CoverObjectKey(tutorEmail string) string {
	return coverKeyPrefix + "/" + tutorEmail + "/" + uuid.New().String() + ".jpg"
}

// PublicURL is where the object is readable after the upload lands.
func (p *FilePresigner) PublicURL(objectKey string) string {
	return p.endpoint + "/" + p.BucketName + "/" + objectKey
}

func (p *FilePresigner) GeneratePresignedUploadURL(objectKey, contentType string) (string, error) {
	request, err := p.S3PresignClient.PresignPutObject(
		context.TODO(),
		&s3.PutObjectInput{
			Bucket:      aws.String(p.BucketName),
			Key:         aws.String(objectKey),
			ContentType: aws.String(contentType),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = uploadURLTTL
		},
	)

	if err != nil {
		return "", err
	}

	return request.URL, nil
}
