// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.

package v1

import "strings"

// Division 行政区（division）及其下辖的县（district）
type Division struct {
	Name      string   `json:"name"`
	Districts []string `json:"districts"`
}

var divisions = []Division{
	{Name: "Barishal", Districts: []string{"Barguna", "Barishal", "Bhola", "Jhalokati", "Patuakhali", "Pirojpur"}},
	{Name: "Chattogram", Districts: []string{
		"Bandarban", "Brahmanbaria", "Chandpur", "Chattogram", "Cox's Bazar", "Cumilla",
		"Feni", "Khagrachhari", "Lakshmipur", "Noakhali", "Rangamati",
	}},
	{Name: "Dhaka", Districts: []string{
		"Dhaka", "Faridpur", "Gazipur", "Gopalganj", "Kishoreganj", "Madaripur", "Manikganj",
		"Munshiganj", "Narayanganj", "Narsingdi", "Rajbari", "Shariatpur", "Tangail",
	}},
	{Name: "Khulna", Districts: []string{
		"Bagerhat", "Chuadanga", "Jashore", "Jhenaidah", "Khulna", "Kushtia", "Magura",
		"Meherpur", "Narail", "Satkhira",
	}},
	{Name: "Mymensingh", Districts: []string{"Jamalpur", "Mymensingh", "Netrokona", "Sherpur"}},
	{Name: "Rajshahi", Districts: []string{
		"Bogura", "Chapainawabganj", "Joypurhat", "Naogaon", "Natore", "Pabna", "Rajshahi", "Sirajganj",
	}},
	{Name: "Rangpur", Districts: []string{
		"Dinajpur", "Gaibandha", "Kurigram", "Lalmonirhat", "Nilphamari", "Panchagarh", "Rangpur", "Thakurgaon",
	}},
	{Name: "Sylhet", Districts: []string{"Habiganj", "Moulvibazar", "Sunamganj", "Sylhet"}},
}

// Divisions 返回全部行政区的副本
func Divisions() []Division {
	out := make([]Division, 0, len(divisions))
	for _, d := range divisions {
		out = append(out, d.clone())
	}
	return out
}

// DivisionNames 只返回行政区名称
func DivisionNames() []string {
	names := make([]string, 0, len(divisions))
	for _, d := range divisions {
		names = append(names, d.Name)
	}
	return names
}

// LookupDivision 按名称查找，忽略大小写和首尾空白
func LookupDivision(name string) (Division, bool) {
	name = strings.TrimSpace(name)
	for _, d := range divisions {
		if strings.EqualFold(d.Name, name) {
			return d.clone(), true
		}
	}
	return Division{}, false
}

// DistrictsOf 未知行政区返回 nil
func DistrictsOf(division string) []string {
	d, ok := LookupDivision(division)
	if !ok {
		return nil
	}
	return d.Districts
}

// IsDistrictOf 判断 district 是否属于 division，均忽略大小写
func IsDistrictOf(division, district string) bool {
	district = strings.TrimSpace(district)
	for _, name := range DistrictsOf(division) {
		if strings.EqualFold(name, district) {
			return true
		}
	}
	return false
}

func (d Division) clone() Division {
	districts := make([]string, len(d.Districts))
	copy(districts, d.Districts)
	return Division{Name: d.Name, Districts: districts}
}
