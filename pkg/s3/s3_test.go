package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL_AWS(t *testing.T) {
	assert.Equal(t,
		"https://media.s3.eu-west-1.amazonaws.com/images/cat.png",
		objectURL("", true, "eu-west-1", "media", "images/cat.png"),
	)
}

func TestObjectURL_DefaultRegion(t *testing.T) {
	assert.Equal(t,
		"https://media.s3.us-east-1.amazonaws.com/images/cat.png",
		objectURL("", true, "", "media", "images/cat.png"),
	)
}

func TestObjectURL_MinIO(t *testing.T) {
	assert.Equal(t,
		"http://minio:9000/media/images/cat.png",
		objectURL("http://minio:9000/", false, "us-east-1", "media", "images/cat.png"),
	)
	assert.Equal(t,
		"https://files.example.com/media/images/cat.png",
		objectURL("https://files.example.com", true, "us-east-1", "media", "images/cat.png"),
	)
}

func TestObjectURL_EscapesKey(t *testing.T) {
	assert.Equal(t,
		"https://media.s3.us-east-1.amazonaws.com/images/my%20cat.png",
		objectURL("", true, "us-east-1", "media", "images/my cat.png"),
	)
}
