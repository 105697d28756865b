package entity

// Categorías de artículos del inventario textil.
const (
	CategoryDye       = "dye"       // colorantes y tintes
	CategoryChemical  = "chemical"  // químicos de proceso
	CategoryAuxiliary = "auxiliary" // auxiliares (suavizantes, dispersantes, fijadores)
	CategoryFabric    = "fabric"    // telas e hilados
	CategoryEquipment = "equipment" // repuestos y equipo
)

// Categories listado de categorías válidas, en orden de presentación.
var Categories = []string{
	CategoryDye, CategoryChemical, CategoryAuxiliary, CategoryFabric, CategoryEquipment,
}

// categoryCodes prefijo de 3 letras por categoría para generar SKUs.
var categoryCodes = map[string]string{
	CategoryDye:       "DYE",
	CategoryChemical:  "CHM",
	CategoryAuxiliary: "AUX",
	CategoryFabric:    "FAB",
	CategoryEquipment: "EQP",
}

// IsValidCategory indica si la categoría pertenece al vocabulario.
func IsValidCategory(category string) bool {
	_, ok := categoryCodes[category]
	return ok
}

// CategoryCode devuelve el código de 3 letras de la categoría ("GEN" si no es conocida).
func CategoryCode(category string) string {
	if code, ok := categoryCodes[category]; ok {
		return code
	}
	return "GEN"
}

// Units unidades de stock conocidas. El vocabulario es sugerido: la validación
// solo exige unidad no vacía, el formulario ofrece estas opciones.
var Units = []string{"kg", "g", "L", "ml", "m", "pcs", "roll", "cone", "box"}

// Motivos sugeridos por tipo de transacción. Son sugerencias para el formulario;
// el motor del ledger acepta cualquier texto no vacío.
var (
	ReasonsIn         = []string{"Purchase", "Return", "Transfer In", "Production", "Other"}
	ReasonsOut        = []string{"Sale", "Usage", "Transfer Out", "Waste", "Expired", "Other"}
	ReasonsAdjustment = []string{"Physical Count", "Correction", "Damage", "Loss", "Other"}
)

// ReasonsForType devuelve el vocabulario de motivos del tipo de transacción
// (nil si el tipo no es conocido).
func ReasonsForType(txType string) []string {
	switch txType {
	case TxTypeIn:
		return ReasonsIn
	case TxTypeOut:
		return ReasonsOut
	case TxTypeAdjustment:
		return ReasonsAdjustment
	}
	return nil
}
