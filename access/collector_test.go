package access

import "testing"

func TestCollectorOnTypeIDMarksAll(t *testing.T) {
	c := NewCollector()
	c.OnTypeID(7)
	r := c.Records()[7]
	if r == nil || !r.All {
		t.Fatalf("Records()[7] = %+v, want All=true", r)
	}
}

func TestCollectorOnVariantMarksOnlyThatIndex(t *testing.T) {
	c := NewCollector()
	c.OnVariant(3, 1)
	c.OnVariant(3, 4)
	r := c.Records()[3]
	if r == nil || r.All {
		t.Fatalf("Records()[3] = %+v, want All=false", r)
	}
	if !r.Variants[1] || !r.Variants[4] || len(r.Variants) != 2 {
		t.Fatalf("Variants = %v, want {1,4}", r.Variants)
	}
}

func TestCollectorOnTypeIDThenOnVariantStaysAll(t *testing.T) {
	c := NewCollector()
	c.OnTypeID(9)
	c.OnVariant(9, 2)
	r := c.Records()[9]
	if !r.All {
		t.Fatal("All should remain true once set")
	}
	if len(r.Variants) != 0 {
		t.Fatalf("Variants = %v, want empty once All is set", r.Variants)
	}
}
