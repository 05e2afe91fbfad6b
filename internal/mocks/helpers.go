package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockTaxStoreForTest creates a new mock TaxStore for testing
func NewMockTaxStoreForTest(t *testing.T) *MockTaxStore {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockTaxStore(ctrl)
}

// NewMockExemptionRecordStoreForTest creates a new mock ExemptionRecordStore for testing
func NewMockExemptionRecordStoreForTest(t *testing.T) *MockExemptionRecordStore {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockExemptionRecordStore(ctrl)
}

// NewMockExemptionCacheForTest creates a new mock ExemptionCache for testing
func NewMockExemptionCacheForTest(t *testing.T) *MockExemptionCache {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockExemptionCache(ctrl)
}

// NewMockFilingGatewayForTest creates a new mock FilingGateway for testing
func NewMockFilingGatewayForTest(t *testing.T) *MockFilingGateway {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockFilingGateway(ctrl)
}

// NewMockReturnRequestPublisherForTest creates a new mock ReturnRequestPublisher for testing
func NewMockReturnRequestPublisherForTest(t *testing.T) *MockReturnRequestPublisher {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockReturnRequestPublisher(ctrl)
}
