// Copyright (C) 2026 ArrayDB Authors.
// See LICENSE for copying information.

package storagemanager

import (
	"context"

	"github.com/zeebo/errs"

	"github.com/arraydb/storagecore/arraymetadata"
	"github.com/arraydb/storagecore/bytesio"
	"github.com/arraydb/storagecore/catalog"
	"github.com/arraydb/storagecore/compression"
	"github.com/arraydb/storagecore/datatype"
	"github.com/arraydb/storagecore/fragmentmetadata"
	"github.com/arraydb/storagecore/uri"
)

func (m *StorageManager) arrayMetadataURI(arrayURI uri.URI) uri.URI {
	return arrayURI.Join(arrayMetadataFileName)
}

// Store serializes meta and writes it to arrayURI's metadata file,
// compressing with the configured metadata compressor. Partial writes are
// repaired: if the write fails, the half-written file is removed before
// returning.
func (m *StorageManager) Store(ctx context.Context, arrayURI uri.URI, meta *arraymetadata.ArrayMetadata) (err error) {
	defer mon.Task()(&ctx)(&err)

	buf := bytesio.NewBuffer(256)
	if err := meta.Serialize(buf); err != nil {
		return Error.Wrap(err)
	}
	compressed, err := compression.Compress(m.cfg.MetadataCompressor, m.cfg.MetadataCompressionLevel, buf.Bytes())
	if err != nil {
		return Error.Wrap(err)
	}

	metaURI := m.arrayMetadataURI(arrayURI)
	if err := m.vfs.Write(metaURI, compressed); err != nil {
		return Error.Wrap(errs.Combine(err, m.vfs.Remove(metaURI)))
	}
	return m.vfs.Sync(metaURI)
}

// Load reads and deserializes arrayURI's metadata file plus every fragment
// subdirectory, in canonical fragment order.
func (m *StorageManager) Load(ctx context.Context, arrayURI uri.URI) (meta *arraymetadata.ArrayMetadata, fragments []*fragmentmetadata.FragmentMetadata, err error) {
	defer mon.Task()(&ctx)(&err)

	metaURI := m.arrayMetadataURI(arrayURI)
	if !m.vfs.IsFile(metaURI) {
		return nil, nil, ErrNotFound.New("array %q: metadata file not found", arrayURI)
	}
	size, err := m.vfs.FileSize(metaURI)
	if err != nil {
		return nil, nil, Error.Wrap(err)
	}
	raw := make([]byte, size)
	if err := m.vfs.Read(metaURI, 0, raw); err != nil {
		return nil, nil, Error.Wrap(err)
	}
	decompressed, err := compression.Decompress(m.cfg.MetadataCompressor, raw)
	if err != nil {
		return nil, nil, Error.Wrap(err)
	}

	meta, err = arraymetadata.Deserialize(bytesio.NewConstBuffer(decompressed), arrayURI)
	if err != nil {
		return nil, nil, Error.Wrap(err)
	}
	if err := meta.Init(); err != nil {
		return nil, nil, Error.Wrap(err)
	}

	entries, err := m.vfs.Ls(arrayURI)
	if err != nil {
		return nil, nil, Error.Wrap(err)
	}
	var fragmentURIs []uri.URI
	for _, e := range entries {
		if m.ObjectType(ctx, e) == datatype.ObjectFragment {
			fragmentURIs = append(fragmentURIs, e)
		}
	}
	fragmentmetadata.SortURIs(fragmentURIs)

	for _, fu := range fragmentURIs {
		f, err := m.loadFragment(fu)
		if err != nil {
			return nil, nil, Error.Wrap(err)
		}
		fragments = append(fragments, f)
	}
	return meta, fragments, nil
}

func (m *StorageManager) loadFragment(fragmentURI uri.URI) (*fragmentmetadata.FragmentMetadata, error) {
	fu := fragmentURI.Join(fragmentMetadataFile)
	size, err := m.vfs.FileSize(fu)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	raw := make([]byte, size)
	if err := m.vfs.Read(fu, 0, raw); err != nil {
		return nil, Error.Wrap(err)
	}
	return fragmentmetadata.Deserialize(bytesio.NewConstBuffer(raw), fragmentURI)
}

// ArrayCreate persists a brand-new array's schema at arrayURI, refusing if
// one already exists.
func (m *StorageManager) ArrayCreate(ctx context.Context, arrayURI uri.URI, meta *arraymetadata.ArrayMetadata) (err error) {
	defer mon.Task()(&ctx)(&err)

	if m.ObjectType(ctx, arrayURI) != datatype.ObjectInvalid {
		return ErrAlreadyExists.New("array %q already exists", arrayURI)
	}
	if !meta.IsInitialized() {
		if err := meta.Init(); err != nil {
			return Error.Wrap(err)
		}
	}
	if err := m.vfs.CreateDir(arrayURI); err != nil {
		return Error.Wrap(err)
	}
	return m.Store(ctx, arrayURI, meta)
}

// ArrayOpen opens arrayURI for either read or write: both
// query types take a shared array lock (fragment creation is
// conflict-free), loading its ArrayMetadata and FragmentMetadata into the
// catalog on first open and bumping the refcount on every open.
func (m *StorageManager) ArrayOpen(ctx context.Context, arrayURI uri.URI) (oa *catalog.OpenArray, err error) {
	defer mon.Task()(&ctx)(&err)

	m.lockManager.Lock(arrayURI, true)

	oa, err = m.openArrayLocked(ctx, arrayURI)
	if err != nil {
		return nil, errs.Combine(err, m.lockManager.Unlock(arrayURI, true))
	}
	oa.IncRef()
	return oa, nil
}

func (m *StorageManager) openArrayLocked(ctx context.Context, arrayURI uri.URI) (*catalog.OpenArray, error) {
	key := arrayURI.String()

	m.openArrayMu.Lock()
	if oa, ok := m.openArrays[key]; ok {
		m.openArrayMu.Unlock()
		return oa, nil
	}
	m.openArrayMu.Unlock()

	meta, fragments, err := m.Load(ctx, arrayURI)
	if err != nil {
		return nil, err
	}
	oa := catalog.NewOpenArray(meta, fragments)

	m.openArrayMu.Lock()
	defer m.openArrayMu.Unlock()
	if existing, ok := m.openArrays[key]; ok {
		return existing, nil
	}
	m.openArrays[key] = oa
	return oa, nil
}

// ArrayClose releases one shared reference to arrayURI, evicting it from the catalog at zero.
func (m *StorageManager) ArrayClose(ctx context.Context, arrayURI uri.URI) (err error) {
	defer mon.Task()(&ctx)(&err)

	m.openArrayMu.Lock()
	oa, ok := m.openArrays[arrayURI.String()]
	m.openArrayMu.Unlock()
	if !ok {
		return ErrNotFound.New("array %q is not open", arrayURI)
	}

	if oa.DecRef() == 0 {
		m.openArrayMu.Lock()
		if cur, ok := m.openArrays[arrayURI.String()]; ok && cur.RefCount() == 0 {
			delete(m.openArrays, arrayURI.String())
		}
		m.openArrayMu.Unlock()
	}
	return m.lockManager.Unlock(arrayURI, true)
}

// ArrayConsolidate invokes the configured Consolidator on arrayURI.
func (m *StorageManager) ArrayConsolidate(ctx context.Context, arrayURI uri.URI) (err error) {
	defer mon.Task()(&ctx)(&err)

	if m.consolidator == nil {
		return Error.New("no consolidator configured")
	}
	return m.consolidator.Consolidate(arrayURI)
}
