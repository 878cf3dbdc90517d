package services

import "errors"

// ErrDatasetUnavailable wraps any failure to load the dataset snapshot.
var ErrDatasetUnavailable = errors.New("dataset unavailable")
