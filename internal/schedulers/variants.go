package schedulers

import "strings"

// Variant is one scheduler build of the external simulator.
type Variant struct {
	Name   string `mapstructure:"name" json:"name"`
	Binary string `mapstructure:"binary" json:"binary"`
}

// OutputFile is the fixed file name the simulator writes its trace to.
func (v Variant) OutputFile() string {
	return "execution" + v.Name + ".txt"
}

func DefaultVariants() []Variant {
	return []Variant{
		{Name: "RR", Binary: "interrupts_RR.exe"},
		{Name: "EP", Binary: "interrupts_EP.exe"},
		{Name: "EP_RR", Binary: "interrupts_EP_RR.exe"},
	}
}

// Find returns the variant named name, ignoring case.
func Find(variants []Variant, name string) (Variant, bool) {
	for _, v := range variants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variant{}, false
}
