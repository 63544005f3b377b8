package api

import (
	"context"

	"github.com/soaringjerry/evoa/internal/services"
)

// AnalysisProxy is the slice of services.AnalysisService the router needs.
type AnalysisProxy interface {
	Analyze(ctx context.Context, req services.AnalysisRequest) (*services.AnalysisResult, error)
}

type UploadIssuer interface {
	CreateUploadURL(ctx context.Context, req services.UploadRequest) (*services.UploadTicket, error)
}

var (
	_ AnalysisProxy = (*services.AnalysisService)(nil)
	_ UploadIssuer  = (*services.UploadService)(nil)
)
