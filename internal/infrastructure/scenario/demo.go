package scenario

// demoYAML escenario de demostración: un producto fabricado y uno comprado, 10 corridas cada uno.
const demoYAML = `
products:
  - name: Product I
    kind: produced
    inventory: 100
    simulation:
      title: Product Variable Cost
      runs: 10
      costs:
        production_costs:
          Energy Costs: {mean: 2, std: 1, upper: 5, lower: 0}
          Labor Costs: {mean: 7, std: 2, upper: 10, lower: 5}
  - name: Product II
    kind: purchased
    inventory: 100
    simulation:
      title: Product Storage Cost
      runs: 10
      costs:
        storage_costs:
          Warehousing: {mean: 0.1, std: 0.1, upper: 0.5, lower: 0}
          Utilities: {mean: 0.1, std: 0.1, upper: 0.5, lower: 0}
          Insurance: {mean: 0.1, std: 0.1, upper: 0.5, lower: 0}
`

// Demo devuelve el escenario de demostración.
func Demo() *File {
	f, err := Parse([]byte(demoYAML))
	if err != nil {
		panic("escenario demo inválido: " + err.Error())
	}
	return f
}
