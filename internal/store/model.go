package store

import "gorm.io/gorm"

// BoostRewardID 是特殊的双倍奖励商品，兑换时不扣币，只激活加成
const BoostRewardID = "boost-special"

// Reward 定义了数据库中奖励目录的数据结构
type Reward struct {
	gorm.Model

	// RewardID 是奖励的业务主键, 例如 "r1"
	RewardID string `gorm:"uniqueIndex;not null" json:"id"`

	Title       string `json:"title"`
	Cost        int    `json:"cost"`
	Partner     string `json:"partner"`
	Image       string `json:"image"`
	Description string `json:"description"`
	MinLevel    int    `json:"minLevel"`
}

func seedRewards() []Reward {
	return []Reward{
		{
			RewardID:    "r1",
			Title:       "1 mês de Clube UOL",
			Cost:        500,
			Partner:     "Clube UOL",
			Image:       "https://images.unsplash.com/photo-1514525253440-b393452e8d26?auto=format&fit=crop&w=300&q=80",
			Description: "Acesso completo a descontos em cinemas e shows.",
			MinLevel:    1,
		},
		{
			RewardID:    "r2",
			Title:       "Cupom 20% Netshoes",
			Cost:        300,
			Partner:     "Guia de Compras",
			Image:       "https://images.unsplash.com/photo-1460353581641-37baddab0fa2?auto=format&fit=crop&w=300&q=80",
			Description: "Válido para categoria esportes.",
			MinLevel:    1,
		},
		{
			RewardID:    "r4",
			Title:       "UOL Play 3 meses",
			Cost:        2500,
			Partner:     "UOL Play",
			Image:       "https://images.unsplash.com/photo-1522869635100-1f4d061dd70d?auto=format&fit=crop&w=300&q=80",
			Description: "Assista séries e campeonatos exclusivos.",
			MinLevel:    2,
		},
		{
			RewardID:    "r5",
			Title:       "Meet & Greet Virtual",
			Cost:        5000,
			Partner:     "Splash UOL",
			Image:       "https://images.unsplash.com/photo-1501386761106-1803616ac733?auto=format&fit=crop&w=300&q=80",
			Description: "Encontro exclusivo com colunistas do UOL.",
			MinLevel:    2,
		},
		{
			RewardID:    BoostRewardID,
			Title:       "Turbo Boost (1h)",
			Cost:        0,
			Partner:     "Clube UOL",
			Image:       "https://images.unsplash.com/photo-1550989460-0adf9ea622e2?auto=format&fit=crop&w=300&q=80",
			Description: "Dobre seus Flash Coins por 1 hora!",
			MinLevel:    1,
		},
	}
}
