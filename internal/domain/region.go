package domain

// Level is the administrative level a dashboard view is scoped to.
type Level string

const (
	LevelNational     Level = "national"
	LevelProvince     Level = "province"
	LevelDistrict     Level = "district"
	LevelMunicipality Level = "municipality"
)

type Province struct {
	Code string `db:"province_code" json:"code"`
	Name string `db:"province_name" json:"name"`
}

type District struct {
	Code         string `db:"district_code" json:"code"`
	Name         string `db:"district_name" json:"name"`
	ProvinceCode string `db:"province_code" json:"province_code"`
	ProvinceName string `db:"province_name" json:"province_name"`
}

type Municipality struct {
	Code         string `db:"municipality_code" json:"code"`
	Name         string `db:"municipality_name" json:"name"`
	DistrictCode string `db:"district_code" json:"district_code"`
	DistrictName string `db:"district_name" json:"district_name"`
	ProvinceCode string `db:"province_code" json:"province_code"`
	ProvinceName string `db:"province_name" json:"province_name"`
}

// Selection is the user's administrative scope. Empty codes widen the scope:
// nothing selected means national, a province without a district means the
// whole province, and so on. A municipality implies its district and a
// district implies its province, so a partial triple is still resolvable.
type Selection struct {
	ProvinceCode     string `query:"province" json:"province,omitempty"`
	DistrictCode     string `query:"district" json:"district,omitempty"`
	MunicipalityCode string `query:"municipality" json:"municipality,omitempty"`
}

// Level returns the narrowest level the selection pins down.
func (s Selection) Level() Level {
	switch {
	case s.MunicipalityCode != "":
		return LevelMunicipality
	case s.DistrictCode != "":
		return LevelDistrict
	case s.ProvinceCode != "":
		return LevelProvince
	default:
		return LevelNational
	}
}
