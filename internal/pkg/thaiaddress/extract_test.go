package thaiaddress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWith_MarkerRules(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		want   Address
		method Method
	}{
		{
			name: "all eight components",
			raw:  "99/1 หมู่ 2 ซอยร่วมมิตร ถนนพหลโยธิน ตำบลคลองหนึ่ง อำเภอคลองหลวง จังหวัดปทุมธานี 12120",
			want: Address{
				HouseNumber: "99/1", VillageNumber: "2", Alley: "ร่วมมิตร", Road: "พหลโยธิน",
				SubDistrict: "คลองหนึ่ง", District: "คลองหลวง", Province: "ปทุมธานี", PostalCode: "12120",
			},
			method: MethodFull,
		},
		{
			name: "no alley",
			raw:  "45 หมู่ 3 ถนนมิตรภาพ ตำบลในเมือง อำเภอเมือง จังหวัดขอนแก่น 40000",
			want: Address{
				HouseNumber: "45", VillageNumber: "3", Road: "มิตรภาพ",
				SubDistrict: "ในเมือง", District: "เมือง", Province: "ขอนแก่น", PostalCode: "40000",
			},
			method: MethodNoAlley,
		},
		{
			name: "no village in Bangkok",
			raw:  "1 ซอยสุขุมวิท 21 ถนนสุขุมวิท แขวงคลองเตยเหนือ เขตวัฒนา จังหวัดกรุงเทพมหานคร 10110",
			want: Address{
				HouseNumber: "1", Alley: "สุขุมวิท 21", Road: "สุขุมวิท",
				SubDistrict: "คลองเตยเหนือ", District: "วัฒนา", Province: "กรุงเทพมหานคร", PostalCode: "10110",
			},
			method: MethodNoVillage,
		},
		{
			name: "no alley and no road",
			raw:  "123 หมู่ 4 ตำบลสุเทพ อำเภอเมือง จังหวัดเชียงใหม่ 50200",
			want: Address{
				HouseNumber: "123", VillageNumber: "4",
				SubDistrict: "สุเทพ", District: "เมือง", Province: "เชียงใหม่", PostalCode: "50200",
			},
			method: MethodNoAlleyNoRoad,
		},
		{
			name: "abbreviated markers",
			raw:  "เลขที่ 12/7 หมู่ที่ 5 ต.บ้านใหม่ อ.ปากเกร็ด จ.นนทบุรี 11120",
			want: Address{
				HouseNumber: "12/7", VillageNumber: "5",
				SubDistrict: "บ้านใหม่", District: "ปากเกร็ด", Province: "นนทบุรี", PostalCode: "11120",
			},
			method: MethodNoAlleyNoRoad,
		},
		{
			name: "village only",
			raw:  "หมู่ 7 ตำบลแม่เหียะ อำเภอเมือง จังหวัดเชียงใหม่ 50100",
			want: Address{
				VillageNumber: "7", SubDistrict: "แม่เหียะ", District: "เมือง", Province: "เชียงใหม่", PostalCode: "50100",
			},
			method: MethodVillageOnly,
		},
		{
			name: "thai numerals",
			raw:  "๑๒๓ หมู่ ๔ ตำบลสุเทพ อำเภอเมือง จังหวัดเชียงใหม่ ๕๐๒๐๐",
			want: Address{
				HouseNumber: "123", VillageNumber: "4",
				SubDistrict: "สุเทพ", District: "เมือง", Province: "เชียงใหม่", PostalCode: "50200",
			},
			method: MethodNoAlleyNoRoad,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, method := ExtractWith(tc.raw)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.method, method)
		})
	}
}

func TestExtractWith_CommaFallback(t *testing.T) {
	t.Run("positional assignment of eight segments", func(t *testing.T) {
		got, method := ExtractWith("a, b, c, d, e, f, g, h")
		assert.Equal(t, MethodCommaSplit, method)
		assert.Equal(t, Address{
			HouseNumber: "a", VillageNumber: "b", Alley: "c", Road: "d",
			SubDistrict: "e", District: "f", Province: "g", PostalCode: "h",
		}, got)
	})

	t.Run("segments beyond eight are discarded", func(t *testing.T) {
		got, method := ExtractWith("บ้านสวน, 7, -, -, ท่าศาลา, เมือง, ลพบุรี, 15000, ประเทศไทย")
		assert.Equal(t, MethodCommaSplit, method)
		assert.Equal(t, "บ้านสวน", got.HouseNumber)
		assert.Equal(t, "15000", got.PostalCode)
	})

	t.Run("four segments fill the first four components", func(t *testing.T) {
		got, method := ExtractWith("10, 2, ซอยหนึ่ง , ถนนสอง")
		assert.Equal(t, MethodCommaSplit, method)
		assert.Equal(t, Address{HouseNumber: "10", VillageNumber: "2", Alley: "ซอยหนึ่ง", Road: "ถนนสอง"}, got)
	})

	t.Run("no plausibility check on segments", func(t *testing.T) {
		got, _ := ExtractWith("a, b, c, d, e, f, g, not-a-code")
		assert.Equal(t, "not-a-code", got.PostalCode)
	})

	t.Run("fewer than four segments is empty", func(t *testing.T) {
		got, method := ExtractWith("12 Main Street, Bangkok, Thailand")
		assert.True(t, got.IsZero())
		assert.Equal(t, MethodNone, method)
	})

	t.Run("empty input is empty", func(t *testing.T) {
		assert.True(t, Extract("").IsZero())
	})
}

func TestExtract_Deterministic(t *testing.T) {
	raw := "123 หมู่ 4 ตำบลสุเทพ อำเภอเมือง จังหวัดเชียงใหม่ 50200"
	assert.Equal(t, Extract(raw), Extract(raw))
}
