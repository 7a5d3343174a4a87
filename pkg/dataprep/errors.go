package dataprep

import "errors"

var (
	// ErrEmptyDataset is returned when filtering leaves no rows to model.
	ErrEmptyDataset = errors.New("dataprep: no rows left after filtering")
	// ErrLeakage is returned when a feature column is an input of the target formula.
	ErrLeakage = errors.New("dataprep: feature set contains a target input column")
	// ErrMissingTarget is returned when the target column is absent.
	ErrMissingTarget = errors.New("dataprep: target column not found")
	// ErrIncomplete is returned when model input still holds missing values.
	ErrIncomplete = errors.New("dataprep: model input contains missing values")
	// ErrShape is returned for rows that do not match the column count.
	ErrShape = errors.New("dataprep: row width does not match columns")
)
