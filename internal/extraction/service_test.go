package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/crewpay/backend-crewpay/internal/common"
)

const (
	testCompanyID = "6b1d8f6e-4f63-4c7b-9a67-3f2d1c5b8a01"
	testUserID    = "b3f5b1a2-9a3c-4f6f-8f3e-2d7c1a9b5e02"
)

func TestCreateJobRejectsNonPDF(t *testing.T) {
	s := &Service{MaxBytes: 1 << 20}
	_, err := s.CreateJob(context.Background(), testCompanyID, testUserID, "invoice.pdf", []byte("GIF89a not a pdf"))
	if !errors.Is(err, ErrNotPDF) {
		t.Fatalf("err = %v, want ErrNotPDF", err)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) || appErr.Code != "UNSUPPORTED_MEDIA_TYPE" {
		t.Fatalf("app error = %+v", appErr)
	}
}

func TestCreateJobRejectsOversizedPayload(t *testing.T) {
	s := &Service{MaxBytes: 8}
	payload := []byte("%PDF-1.7 0123456789")
	_, err := s.CreateJob(context.Background(), testCompanyID, testUserID, "invoice.pdf", payload)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
}

func TestCreateJobRejectsBadIDs(t *testing.T) {
	s := &Service{}
	if _, err := s.CreateJob(context.Background(), "nope", testUserID, "f.pdf", []byte("%PDF-1.7")); err == nil {
		t.Fatal("invalid company id accepted")
	}
	if _, err := s.CreateJob(context.Background(), testCompanyID, "nope", "f.pdf", []byte("%PDF-1.7")); err == nil {
		t.Fatal("invalid user id accepted")
	}
}
