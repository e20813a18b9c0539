package domain

import "testing"

func TestPackCellID_Roundtrip(t *testing.T) {
	tests := []struct {
		surface SurfaceType
		x, z    int
	}{
		{SurfaceParking, 0, 0},
		{SurfaceDriveway, -28, 27},
		{SurfaceRoad, 28, -27},
		{SurfaceDeck, -14, -10},
		{SurfaceFloor, 12, 8},
		{SurfaceNone, -1, 1},
	}

	for _, tt := range tests {
		id := PackCellID(tt.surface, tt.x, tt.z)

		if id.Surface() != tt.surface {
			t.Errorf("CellID(%s,%d,%d).Surface() = %v, want %v", tt.surface, tt.x, tt.z, id.Surface(), tt.surface)
		}
		if id.X() != tt.x {
			t.Errorf("CellID(%s,%d,%d).X() = %d, want %d", tt.surface, tt.x, tt.z, id.X(), tt.x)
		}
		if id.Z() != tt.z {
			t.Errorf("CellID(%s,%d,%d).Z() = %d, want %d", tt.surface, tt.x, tt.z, id.Z(), tt.z)
		}
	}
}

func TestPackCellID_SurfaceDisambiguates(t *testing.T) {
	// Одна и та же координата с разным типом поверхности - разные ключи.
	// Важно для открытой парковки, где тип входит в идентификатор клетки.
	a := PackCellID(SurfaceParking, 5, -12)
	b := PackCellID(SurfaceDriveway, 5, -12)
	if a == b {
		t.Error("cell IDs with different surfaces must not collide")
	}
}

func TestCellID_JSON(t *testing.T) {
	id := PackCellID(SurfaceRoad, -7, 19)

	data, err := id.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if data[0] != '"' {
		t.Error("CellID must serialize as a JSON string (JS precision)")
	}

	var back CellID
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if back != id {
		t.Errorf("roundtrip mismatch: got %v want %v", back, id)
	}
}
