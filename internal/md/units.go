package md

// Physical constants in MD units (nm, ps, amu, K, kJ/mol).
const (
	// Boltz is the molar Boltzmann constant in kJ/(mol·K).
	Boltz = 8.31446261815324e-3

	// Avogadro converts per-particle to per-mole quantities.
	Avogadro = 6.02214076e23
)
