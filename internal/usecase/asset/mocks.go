package asset

import (
	"bytes"
	"context"
	"io"

	"github.com/fhuszti/assets-cdn-go/internal/model"
	"github.com/fhuszti/assets-cdn-go/internal/port"
)

type mockRepo struct {
	assetRecord *model.Asset
	getErr      error

	getCalled bool
	gotBucket string
	gotID     string
}

func (m *mockRepo) GetByID(ctx context.Context, bucket, id string) (*model.Asset, error) {
	m.getCalled = true
	m.gotBucket = bucket
	m.gotID = id
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.assetRecord, nil
}

type mockCache struct {
	record *model.Asset
	getErr error

	getCalled bool
	setCalled bool
	set       *model.Asset
}

func (m *mockCache) GetAssetRecord(ctx context.Context, bucket, id string) (*model.Asset, error) {
	m.getCalled = true
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.record, nil
}
func (m *mockCache) SetAssetRecord(ctx context.Context, bucket, id string, a *model.Asset) {
	m.setCalled = true
	m.set = a
}
func (m *mockCache) DeleteAssetRecord(ctx context.Context, bucket, id string) error {
	return nil
}

type mockTier struct {
	data   []byte
	getErr error

	getCalled bool
	gotKey    string
}

func (m *mockTier) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	m.getCalled = true
	m.gotKey = fileKey
	if m.getErr != nil {
		return nil, m.getErr
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

type mockStorage struct {
	data       []byte
	fileExists bool

	getErr        error
	saveErr       error
	fileExistsErr error
	statInfo      port.FileInfo
	statErr       error

	getCalled        bool
	saveCalled       bool
	fileExistsCalled bool
	savedKey         string
	savedData        []byte
	savedOpts        map[string]string
	gotKey           string
}

func (m *mockStorage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	m.getCalled = true
	m.gotKey = fileKey
	if m.getErr != nil {
		return nil, m.getErr
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}
func (m *mockStorage) InitBucket(bucket string) error { return nil }
func (m *mockStorage) FileExists(ctx context.Context, bucket, fileKey string) (bool, error) {
	m.fileExistsCalled = true
	if m.fileExistsErr != nil {
		return false, m.fileExistsErr
	}
	return m.fileExists, nil
}
func (m *mockStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	if m.statErr != nil {
		return port.FileInfo{}, m.statErr
	}
	if m.statInfo != (port.FileInfo{}) {
		return m.statInfo, nil
	}
	return port.FileInfo{SizeBytes: int64(len(m.data))}, nil
}
func (m *mockStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.saveCalled = true
	m.savedKey = fileKey
	m.savedOpts = opts
	data, _ := io.ReadAll(reader)
	m.savedData = data
	return m.saveErr
}

type mockTranscoder struct {
	out port.TranscodeOutput
	err error

	called    bool
	gotWidth  int
	gotHeight int
	gotFit    string
}

func (m *mockTranscoder) Transcode(ctx context.Context, data []byte, width, height int, fit string) (port.TranscodeOutput, error) {
	m.called = true
	m.gotWidth = width
	m.gotHeight = height
	m.gotFit = fit
	if m.err != nil {
		return port.TranscodeOutput{}, m.err
	}
	return m.out, nil
}

type mockDispatcher struct {
	err error

	called bool
	got    port.WarmVariantInput
}

func (m *mockDispatcher) EnqueueWarmVariant(ctx context.Context, in port.WarmVariantInput) error {
	m.called = true
	m.got = in
	return m.err
}
