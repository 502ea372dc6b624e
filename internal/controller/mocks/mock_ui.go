// Package mocks provides testify mocks for the controller package.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"mapdispel.dev/pkg/mapdispel/internal/controller"
	m "mapdispel.dev/pkg/mapdispel/internal/model"
)

// MockUI is a mock implementation of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a MockUI whose expectations are asserted on test cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mockUI := &MockUI{}
	mockUI.Mock.Test(t)

	t.Cleanup(func() { mockUI.AssertExpectations(t) })

	return mockUI
}

var _ controller.UI = (*MockUI)(nil)

// Start provides a mock function.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	ret := _m.Called(ctx, options)
	return ret.Error(0)
}

// Close provides a mock function.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// Wait provides a mock function.
func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayScanProgress provides a mock function.
func (_m *MockUI) DisplayScanProgress(ctx context.Context, progress m.ScanProgress) {
	_m.Called(ctx, progress)
}

// DisplayCatalog provides a mock function.
func (_m *MockUI) DisplayCatalog(ctx context.Context, dir m.Path, entries []m.MapEntry) error {
	ret := _m.Called(ctx, dir, entries)
	return ret.Error(0)
}

// DisplayVerificationStarted provides a mock function.
func (_m *MockUI) DisplayVerificationStarted(ctx context.Context, digests int) {
	_m.Called(ctx, digests)
}

// DisplayDeletionReport provides a mock function.
func (_m *MockUI) DisplayDeletionReport(ctx context.Context, report m.DeletionReport) error {
	ret := _m.Called(ctx, report)
	return ret.Error(0)
}

// Notify provides a mock function.
func (_m *MockUI) Notify(ctx context.Context, err error) {
	_m.Called(ctx, err)
}

// SelectForDeletion provides a mock function.
func (_m *MockUI) SelectForDeletion(ctx context.Context, entries []m.MapEntry) ([]string, error) {
	ret := _m.Called(ctx, entries)

	var names []string
	if rf, ok := ret.Get(0).(func(context.Context, []m.MapEntry) []string); ok {
		names = rf(ctx, entries)
	} else if ret.Get(0) != nil {
		names = ret.Get(0).([]string)
	}

	return names, ret.Error(1)
}
