package s3

import (
	"errors"
	"fmt"
	"testing"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "no such key", err: &s3types.NoSuchKey{}, want: true},
		{name: "wrapped no such key", err: fmt.Errorf("get: %w", &s3types.NoSuchKey{}), want: true},
		{name: "generic not found code", err: &smithy.GenericAPIError{Code: "NotFound"}, want: true},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isNotFound(tt.err); got != tt.want {
				t.Fatalf("isNotFound(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
