package guuid

import (
	"testing"
)

func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := New()
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkNewV1(b *testing.B) {
	gen := NewGenerator()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := gen.NewV1()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewV1Custom(b *testing.B) {
	node := CustomNode("b6:00:cd:ca:75:c7")
	seq := CustomClockSeq(15000)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := NewV1Custom(node, seq)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewV3(b *testing.B) {
	name := []byte("my.domain.com")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NewV3(NamespaceDNS, name)
	}
}

func BenchmarkNewV4(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := NewV4()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNewV5(b *testing.B) {
	name := []byte("my.domain.com")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = NewV5(NamespaceDNS, name)
	}
}

func BenchmarkMonotonicGenerator_New(b *testing.B) {
	gen := NewMonotonicGenerator(nil)
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := gen.New()
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkCodecs(b *testing.B) {
	uuid := MustParse("0190a6d2-3f6e-7c4b-9a1d-5e8f7b2c4d60")
	text := uuid.String()
	raw := uuid.Bytes()
	hexText := uuid.EncodeToHex()
	b64 := uuid.EncodeToBase64()

	codecs := []struct {
		name string
		fn   func() error
	}{
		{"String", func() error { _ = uuid.String(); return nil }},
		{"Parse", func() error { _, err := Parse(text); return err }},
		{"ParseNoHyphens", func() error { _, err := Parse(hexText); return err }},
		{"ParseURN", func() error { _, err := Parse(urnPrefix + text); return err }},
		{"FromBytes", func() error { _, err := FromBytes(raw); return err }},
		{"EncodeURN", func() error { _ = uuid.Encode(FormatURN); return nil }},
		{"DecodeFromHex", func() error { _, err := DecodeFromHex(hexText); return err }},
		{"EncodeToBase64", func() error { _ = uuid.EncodeToBase64(); return nil }},
		{"DecodeFromBase64", func() error { _, err := DecodeFromBase64(b64); return err }},
		{"UnmarshalText", func() error { var u UUID; return u.UnmarshalText([]byte(text)) }},
		{"UnmarshalBinary", func() error { var u UUID; return u.UnmarshalBinary(raw) }},
	}
	for _, c := range codecs {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := c.fn(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkAccessors(b *testing.B) {
	v1 := MustParse("49cac37c-310b-11eb-adc1-0242ac120002")
	v7 := MustParse("0190a6d2-3f6e-7c4b-9a1d-5e8f7b2c4d60")

	b.Run("Compare", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = v1.Compare(v7)
		}
	})
	b.Run("Version", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = v7.Version()
		}
	})
	b.Run("UnixMicro", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = v1.UnixMicro()
		}
	})
	b.Run("UnixMilli", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = v7.UnixMilli()
		}
	})
	b.Run("Time", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = v7.Time()
		}
	})
}

// Benchmark concurrent generation
func BenchmarkGenerator_NewV7Concurrent(b *testing.B) {
	gen := NewGenerator()
	b.ResetTimer()
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := gen.NewV7()
			if err != nil {
				b.Fatal(err)
			}
		}
	})
}

// Benchmark for batch generation
func BenchmarkGenerator_NewV7Batch(b *testing.B) {
	gen := NewGenerator()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 100; j++ {
			_, err := gen.NewV7()
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
