package kvdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var (
	ErrorsKeyNotExists = errors.New("key not exists")
)

const (
	BBOLTDB_CAMPSITE_BUCKET = "campsites"
	BBOLTDB_META_BUCKET     = "meta"

	datasetMetaKey = "dataset"
)

type KVDB struct {
	db *bbolt.DB
	sync.Mutex
}

// NewKVDB wraps an open bolt db and creates the buckets.
func NewKVDB(db *bbolt.DB) (*KVDB, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{BBOLTDB_CAMPSITE_BUCKET, BBOLTDB_META_BUCKET} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &KVDB{db: db}, nil
}

// campsite keys are big endian so a cursor walks them in dataset order.
func campsiteKey(id int) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, uint32(id))
	return key
}

// SaveCampsites. batched write, safe to call from many goroutines: bolt coalesces concurrent Batch calls.
func (db *KVDB) SaveCampsites(campsites []datastructure.Campsite) error {
	return db.db.Batch(func(tx *bbolt.Tx) error {
		for _, campsite := range campsites {
			err := db.Set(campsite, tx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *KVDB) Set(campsite datastructure.Campsite, tx *bbolt.Tx) error {
	campsiteBytes, err := serializeCampsite(campsite)
	if err != nil {
		return err
	}
	b := tx.Bucket([]byte(BBOLTDB_CAMPSITE_BUCKET))
	return b.Put(campsiteKey(campsite.ID), campsiteBytes)
}

func (db *KVDB) GetCampsite(id int) (campsite datastructure.Campsite, err error) {
	viewErr := db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_CAMPSITE_BUCKET))
		campsiteBytes := b.Get(campsiteKey(id))
		if campsiteBytes == nil {
			err = fmt.Errorf("campsite with id %d: %w", id, ErrorsKeyNotExists)
			return nil
		}
		campsite, err = deserializeCampsite(campsiteBytes)
		return nil
	})
	if viewErr != nil {
		return campsite, viewErr
	}
	return
}

// LoadCampsites returns every stored campsite ordered by id.
func (db *KVDB) LoadCampsites() ([]datastructure.Campsite, error) {
	campsites := []datastructure.Campsite{}
	err := db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_CAMPSITE_BUCKET))
		return b.ForEach(func(_, v []byte) error {
			campsite, err := deserializeCampsite(v)
			if err != nil {
				return err
			}
			campsites = append(campsites, campsite)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load campsites: %w", err)
	}
	return campsites, nil
}

func (db *KVDB) CountCampsites() (int, error) {
	count := 0
	err := db.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(BBOLTDB_CAMPSITE_BUCKET)).Stats().KeyN
		return nil
	})
	return count, err
}

// Reset drops every campsite and the dataset metadata.
func (db *KVDB) Reset() error {
	db.Lock()
	defer db.Unlock()
	return db.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{BBOLTDB_CAMPSITE_BUCKET, BBOLTDB_META_BUCKET} {
			if err := tx.DeleteBucket([]byte(name)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *KVDB) PutMeta(meta datastructure.DatasetMeta) error {
	buf, err := msgpack.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("error when marshalling dataset metadata: %w", err)
	}
	return db.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(BBOLTDB_META_BUCKET)).Put([]byte(datasetMetaKey), buf)
	})
}

func (db *KVDB) GetMeta() (meta datastructure.DatasetMeta, err error) {
	var buf []byte
	err = db.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(BBOLTDB_META_BUCKET)).Get([]byte(datasetMetaKey))
		if v == nil {
			return ErrorsKeyNotExists
		}
		buf = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return
	}
	if err = msgpack.Unmarshal(buf, &meta); err != nil {
		err = fmt.Errorf("error when unmarshalling dataset metadata: %w", err)
	}
	return
}

func (db *KVDB) Close() error {
	return db.db.Close()
}

func GetFloat(bb *bytes.Buffer, offset int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(bb.Bytes()[offset:]))
}

func PutFloat(bb *bytes.Buffer, offset int, val float64) {
	binary.LittleEndian.PutUint64(bb.Bytes()[offset:], math.Float64bits(val))
}

func GetInt(bb *bytes.Buffer, offset int) int {
	return int(binary.LittleEndian.Uint32(bb.Bytes()[offset:]))
}

// PutInt. set int ke byte array page di posisi = offset.
func PutInt(bb *bytes.Buffer, offset int, val int) {
	binary.LittleEndian.PutUint32(bb.Bytes()[offset:], uint32(val))
}

// GetBytes. length-prefixed bytes at offset: page[offset+4:offset+4+length].
func GetBytes(bb *bytes.Buffer, offset int) []byte {
	length := GetInt(bb, offset)
	b := make([]byte, length)
	copy(b, bb.Bytes()[offset+4:offset+4+length])
	return b
}

func PutBytes(bb *bytes.Buffer, offset int, b []byte) {
	PutInt(bb, offset, len(b))
	copy(bb.Bytes()[offset+4:], b)
}

func GetString(bb *bytes.Buffer, offset int) string {
	return string(GetBytes(bb, offset))
}

// PutString writes s length-prefixed and returns its byte length (without the prefix).
func PutString(bb *bytes.Buffer, offset int, s string) int {
	PutBytes(bb, offset, []byte(s))
	return len([]byte(s))
}

func GetCampsiteSize(campsite datastructure.Campsite) int {
	return 4 + 4 + len(campsite.LocationName) + 4 + len(campsite.SiteName) + 4 + len(campsite.Type) + 8 + 8
}

// layout: id | location_name | site_name | type | lat | lon
func serializeCampsite(campsite datastructure.Campsite) ([]byte, error) {
	bb := bytes.NewBuffer(make([]byte, GetCampsiteSize(campsite)))

	leftPos := 0

	PutInt(bb, leftPos, campsite.ID)
	leftPos += 4

	stringLen := PutString(bb, leftPos, campsite.LocationName)
	leftPos += stringLen + 4

	stringLen = PutString(bb, leftPos, campsite.SiteName)
	leftPos += stringLen + 4

	stringLen = PutString(bb, leftPos, campsite.Type)
	leftPos += stringLen + 4

	PutFloat(bb, leftPos, campsite.Coordinates.Latitude)
	leftPos += 8

	PutFloat(bb, leftPos, campsite.Coordinates.Longitude)

	return bb.Bytes(), nil
}

func deserializeCampsite(buf []byte) (datastructure.Campsite, error) {
	if len(buf) < 4+4+4+4+8+8 {
		return datastructure.Campsite{}, fmt.Errorf("campsite record too short: %d bytes", len(buf))
	}
	bb := bytes.NewBuffer(buf)
	campsite := datastructure.Campsite{}
	leftPos := 0

	campsite.ID = GetInt(bb, leftPos)
	leftPos += 4

	campsite.LocationName = GetString(bb, leftPos)
	leftPos += len(campsite.LocationName) + 4 // +4: length prefix

	campsite.SiteName = GetString(bb, leftPos)
	leftPos += len(campsite.SiteName) + 4

	campsite.Type = GetString(bb, leftPos)
	leftPos += len(campsite.Type) + 4

	campsite.Coordinates.Latitude = GetFloat(bb, leftPos)
	leftPos += 8

	campsite.Coordinates.Longitude = GetFloat(bb, leftPos)

	return campsite, nil
}
