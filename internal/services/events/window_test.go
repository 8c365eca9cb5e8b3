package eventsvc

import "testing"

func TestLocateExactBounds(t *testing.T) {
	ts := []int64{10, 20, 30, 40, 50}
	lo, hi, ok := Locate(ts, 20, 40)
	if !ok || lo != 1 || hi != 3 {
		t.Fatalf("locate [20,40] = %d,%d,%v", lo, hi, ok)
	}
}

func TestLocateProbesMissingBounds(t *testing.T) {
	ts := []int64{10, 20, 30, 40, 50}
	// Neither 15 nor 45 exists; probe forward/backward to 20 and 40.
	lo, hi, ok := Locate(ts, 15, 45)
	if !ok || lo != 1 || hi != 3 {
		t.Fatalf("locate [15,45] = %d,%d,%v", lo, hi, ok)
	}
}

func TestLocateSingleTimestampWindow(t *testing.T) {
	ts := []int64{10, 20, 30}
	lo, hi, ok := Locate(ts, 20, 20)
	if !ok || lo != 1 || hi != 1 {
		t.Fatalf("locate [20,20] = %d,%d,%v", lo, hi, ok)
	}
}

func TestLocateNoHit(t *testing.T) {
	ts := []int64{10, 20, 30}
	if _, _, ok := Locate(ts, 12, 18); ok {
		t.Fatal("window between timestamps should not match")
	}
	if _, _, ok := Locate(ts, 40, 90); ok {
		t.Fatal("window past the log should not match")
	}
	if _, _, ok := Locate(ts, 1, 5); ok {
		t.Fatal("window before the log should not match")
	}
}

func TestLocateExpandsDuplicates(t *testing.T) {
	ts := []int64{10, 20, 20, 20, 30, 30}
	lo, hi, ok := Locate(ts, 20, 30)
	if !ok || lo != 1 || hi != 5 {
		t.Fatalf("locate [20,30] = %d,%d,%v", lo, hi, ok)
	}
	lo, hi, ok = Locate(ts, 20, 20)
	if !ok || lo != 1 || hi != 3 {
		t.Fatalf("locate [20,20] = %d,%d,%v", lo, hi, ok)
	}
}

func TestLocateDegenerate(t *testing.T) {
	if _, _, ok := Locate(nil, 0, 100); ok {
		t.Fatal("empty slice matched")
	}
	if _, _, ok := Locate([]int64{10}, 50, 40); ok {
		t.Fatal("inverted window matched")
	}
}
