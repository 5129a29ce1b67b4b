package entity

// FranchiseSettings parametriza o comportamento do motor por franquia (cliente).
// WarehouseManagementEnabled decide o caminho de lançamento de estoque no recebimento:
// desabilitado lança direto na confirmação do documento; habilitado adia até a
// confirmação de endereçamento de cada pallet.
type FranchiseSettings struct {
	FranchiseID                string
	WarehouseManagementEnabled bool
}
