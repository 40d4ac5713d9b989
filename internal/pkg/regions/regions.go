// Package regions holds the static administrative-region lookup tables used
// by the KYC address fields. Three levels: province, district, sub-district.
// The data is read-only reference data embedded at build time.
package regions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"sync"
)

//go:embed regions.json
var rawRegions []byte

var (
	ErrUnknownCode = errors.New("unknown region code")

	loadOnce  sync.Once
	directory Directory
)

type Region struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type Province struct {
	Region
	Districts []District `json:"districts"`
}

type District struct {
	Region
	SubDistricts []Region `json:"subDistricts"`
}

type Directory struct {
	Provinces []Province `json:"provinces"`
}

func load() Directory {
	loadOnce.Do(func() {
		if err := json.Unmarshal(rawRegions, &directory); err != nil {
			// Embedded data is part of the build; failing to parse it is a
			// programming error, not a runtime condition.
			panic("regions: invalid embedded region data: " + err.Error())
		}
	})
	return directory
}

func Provinces() []Region {
	dir := load()
	out := make([]Region, len(dir.Provinces))
	for i, p := range dir.Provinces {
		out[i] = p.Region
	}
	return out
}

func Districts(provinceCode string) ([]Region, error) {
	p, err := findProvince(provinceCode)
	if err != nil {
		return nil, err
	}
	out := make([]Region, len(p.Districts))
	for i, d := range p.Districts {
		out[i] = d.Region
	}
	return out, nil
}

func SubDistricts(provinceCode, districtCode string) ([]Region, error) {
	d, err := findDistrict(provinceCode, districtCode)
	if err != nil {
		return nil, err
	}
	out := make([]Region, len(d.SubDistricts))
	copy(out, d.SubDistricts)
	return out, nil
}

// ResolveLabels maps a code triple to display labels.
func ResolveLabels(provinceCode, districtCode, subDistrictCode string) (province, district, subDistrict string, err error) {
	d, err := findDistrict(provinceCode, districtCode)
	if err != nil {
		return "", "", "", err
	}
	p, _ := findProvince(provinceCode)
	for _, s := range d.SubDistricts {
		if s.Code == subDistrictCode {
			return p.Label, d.Label, s.Label, nil
		}
	}
	return "", "", "", ErrUnknownCode
}

// ValidateTriple reports whether the code triple names a real sub-district.
func ValidateTriple(provinceCode, districtCode, subDistrictCode string) bool {
	_, _, _, err := ResolveLabels(provinceCode, districtCode, subDistrictCode)
	return err == nil
}

func findProvince(code string) (Province, error) {
	for _, p := range load().Provinces {
		if p.Code == code {
			return p, nil
		}
	}
	return Province{}, ErrUnknownCode
}

func findDistrict(provinceCode, districtCode string) (District, error) {
	p, err := findProvince(provinceCode)
	if err != nil {
		return District{}, err
	}
	for _, d := range p.Districts {
		if d.Code == districtCode {
			return d, nil
		}
	}
	return District{}, ErrUnknownCode
}
