package curves

import (
	"fmt"

	"github.com/zkmsg/zkmsg/crypto/ecc"
	bjjGnark "github.com/zkmsg/zkmsg/crypto/ecc/bjj_gnark"
	bjjIden3 "github.com/zkmsg/zkmsg/crypto/ecc/bjj_iden3"
)

const (
	// CurveTypeBabyJubJub is the default BabyJubJub implementation.
	CurveTypeBabyJubJub      = "bjj_gnark"
	CurveTypeBabyJubJubGnark = "bjj_gnark"
	CurveTypeBabyJubJubIden3 = "bjj_iden3"
)

// New creates a new instance of a Point implementation based on the provided
// type string. The supported types are defined as constants in this package.
func New(curveType string) (ecc.Point, error) {
	switch curveType {
	case CurveTypeBabyJubJubGnark:
		return bjjGnark.New(), nil
	case CurveTypeBabyJubJubIden3:
		return bjjIden3.New(), nil
	default:
		return nil, fmt.Errorf("unsupported curve type: %s", curveType)
	}
}
