package graph

import "github.com/vk/framegraph/internal/scheduler"

// Errors returned by Render. See package scheduler for their meaning.
var (
	ErrInvalidConnection      = scheduler.ErrInvalidConnection
	ErrSampleCountMismatch    = scheduler.ErrSampleCountMismatch
	ErrFeedbackLoop           = scheduler.ErrFeedbackLoop
	ErrPoisoned               = scheduler.ErrPoisoned
	ErrSampleCountUnspecified = scheduler.ErrSampleCountUnspecified
)
