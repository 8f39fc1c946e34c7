package mock

import "github.com/fwojciec/kvdrop"

var _ kvdrop.Serializer = (*Serializer)(nil)

// Serializer is a mock implementation of kvdrop.Serializer.
type Serializer struct {
	FormatFn    func() kvdrop.Format
	MIMETypeFn  func() string
	SerializeFn func(ds *kvdrop.Dataset) ([]byte, error)
}

func (s *Serializer) Format() kvdrop.Format {
	return s.FormatFn()
}

func (s *Serializer) MIMEType() string {
	return s.MIMETypeFn()
}

func (s *Serializer) Serialize(ds *kvdrop.Dataset) ([]byte, error) {
	return s.SerializeFn(ds)
}

var _ kvdrop.SnapshotValidator = (*SnapshotValidator)(nil)

// SnapshotValidator is a mock implementation of kvdrop.SnapshotValidator.
type SnapshotValidator struct {
	ValidateRecordsFn func(data []byte) error
}

func (v *SnapshotValidator) ValidateRecords(data []byte) error {
	return v.ValidateRecordsFn(data)
}
