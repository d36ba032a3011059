package maps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmabaso/sdg3health/internal/domain"
	"github.com/tmabaso/sdg3health/internal/pkg/cache"
	"github.com/tmabaso/sdg3health/internal/pkg/constants"
	"github.com/tmabaso/sdg3health/internal/pkg/store/storetest"
)

func fakeRows() []storetest.Row {
	rows := []storetest.Row{
		{
			ProvinceCode: "GT", ProvinceName: "Gauteng",
			DistrictCode: "DC-GT1", DistrictName: "City of Tshwane",
			MunicipalityCode: "TSH", MunicipalityName: "City of Tshwane",
			Geometry: squareGeom,
		},
		{
			ProvinceCode: "GT", ProvinceName: "Gauteng",
			DistrictCode: "DC-GT2", DistrictName: "City of Johannesburg",
			MunicipalityCode: "JHB", MunicipalityName: "City of Johannesburg",
			Geometry: eastGeom,
		},
		{
			ProvinceCode: "WC", ProvinceName: "Western Cape",
			DistrictCode: "DC-WC1", DistrictName: "City of Cape Town",
			MunicipalityCode: "CPT", MunicipalityName: "City of Cape Town",
			Geometry: squareGeom,
		},
	}
	rows[0].HealthWorkerDensity = fptr(18)
	rows[1].HealthWorkerDensity = fptr(26)
	rows[2].HealthWorkerDensity = fptr(12)
	return rows
}

func TestService_Choropleth_National(t *testing.T) {
	svc := NewMapsService(&storetest.Fake{Rows: fakeRows()}, cache.New())

	artifact, err := svc.Choropleth(context.Background(), domain.Selection{}, domain.LayerHealthWorkerDensity)
	require.NoError(t, err)

	assert.Equal(t, domain.LevelNational, artifact.Level)
	assert.False(t, artifact.NoData)
	// one feature per province
	require.Len(t, artifact.Features.Features, 2)
	assert.Equal(t, "GT", artifact.Features.Features[0].ID)
	assert.Equal(t, "WC", artifact.Features.Features[1].ID)

	// Gauteng density is the average of its municipalities
	gt := artifact.Features.Features[0].Properties
	require.NotNil(t, gt.Value)
	assert.InDelta(t, 22, *gt.Value, 0.001)
}

func TestService_Choropleth_Province(t *testing.T) {
	svc := NewMapsService(&storetest.Fake{Rows: fakeRows()}, cache.New())

	artifact, err := svc.Choropleth(context.Background(), domain.Selection{ProvinceCode: "GT"}, domain.LayerHealthWorkerDensity)
	require.NoError(t, err)

	assert.Equal(t, domain.LevelProvince, artifact.Level)
	require.Len(t, artifact.Features.Features, 2) // two Gauteng districts
	assert.Nil(t, artifact.Context)
}

func TestService_Choropleth_MunicipalityWithNeighbors(t *testing.T) {
	fake := &storetest.Fake{
		Rows: fakeRows(),
		Neighbors: map[string][]*domain.BoundaryRow{
			"TSH": {boundaryRow("JHB", "City of Johannesburg", fptr(26), eastGeom)},
		},
	}
	svc := NewMapsService(fake, cache.New())

	sel := domain.Selection{ProvinceCode: "GT", DistrictCode: "DC-GT1", MunicipalityCode: "TSH"}
	artifact, err := svc.Choropleth(context.Background(), sel, domain.LayerHealthWorkerDensity)
	require.NoError(t, err)

	assert.Equal(t, domain.LevelMunicipality, artifact.Level)
	require.Len(t, artifact.Features.Features, 1)
	assert.Equal(t, "TSH", artifact.Features.Features[0].ID)
	require.NotNil(t, artifact.Context)
	require.Len(t, artifact.Context.Features, 1)
	assert.Equal(t, "JHB", artifact.Context.Features[0].ID)
}

func TestService_Choropleth_MunicipalityWithoutBoundary(t *testing.T) {
	svc := NewMapsService(&storetest.Fake{Rows: fakeRows()}, cache.New())

	sel := domain.Selection{MunicipalityCode: "NOPE"}
	artifact, err := svc.Choropleth(context.Background(), sel, domain.LayerHealthWorkerDensity)
	require.NoError(t, err)

	assert.True(t, artifact.NoData)
	assert.Empty(t, artifact.Features.Features)
}

func TestService_Choropleth_UnknownIndicator(t *testing.T) {
	svc := NewMapsService(&storetest.Fake{Rows: fakeRows()}, cache.New())

	_, err := svc.Choropleth(context.Background(), domain.Selection{}, "not_a_layer")
	assert.ErrorIs(t, err, constants.ErrUnknownIndicator)
}

func TestService_Choropleth_CachesBoundaries(t *testing.T) {
	fake := &storetest.Fake{Rows: fakeRows()}
	svc := NewMapsService(fake, cache.New())

	_, err := svc.Choropleth(context.Background(), domain.Selection{}, domain.LayerHealthWorkerDensity)
	require.NoError(t, err)

	// a store failure after the first render goes unnoticed while cached
	fake.Err = assert.AnError
	artifact, err := svc.Choropleth(context.Background(), domain.Selection{}, domain.LayerHealthWorkerDensity)
	require.NoError(t, err)
	assert.Len(t, artifact.Features.Features, 2)
}

func TestService_Layers(t *testing.T) {
	svc := NewMapsService(&storetest.Fake{}, cache.New())
	layers := svc.Layers()
	require.NotEmpty(t, layers)
	assert.Equal(t, domain.LayerHealthWorkerDensity, layers[0].ID)
}
