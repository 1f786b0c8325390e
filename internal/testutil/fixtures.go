package testutil

// SoundsCSV and RangesCSV are a small string-section catalogue. Write them to
// "session/sounds.csv" and "session/ranges.csv" so a sounds block can name
// them relative to the session.
const SoundsCSV = `ix,section,instrument,articulation,short_name
0,Strings,Basses,Spiccato,bs-spic
1,Strings,Celli,Spiccato,vc-spic
2,Strings,Violas,Spiccato,va-spic
3,Strings,Violins 1,Spiccato,vn1-spic
4,Strings,Violins 2,Spiccato,vn2-spic
5,Brass,Tuba,Long,tba-long
`

const RangesCSV = `short_name,low,high
bs-spic,C1,G3
vc-spic,C2,A5
va-spic,C3,E6
vn1-spic,G3,C7
vn2-spic,G3,C7
tba-long,D1,F4
`

// Catalogue returns the fixture files keyed for RunIntegrationTest.
func Catalogue() map[string]string {
	return map[string]string{
		SessionPath + "/sounds.csv": SoundsCSV,
		SessionPath + "/ranges.csv": RangesCSV,
	}
}

// With merges extra files into the catalogue.
func With(files map[string]string) map[string]string {
	all := Catalogue()
	for k, v := range files {
		all[k] = v
	}
	return all
}
