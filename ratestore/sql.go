package ratestore

// SQL
const (
	QueryTariffs string = `SELECT code,
       IFNULL(description, '')          AS description,
       IFNULL(duty_rate, 0)             AS duty_rate,
       IFNULL(statistics_rate, 0)       AS statistics_rate,
       IFNULL(community_levy_rate, 0)   AS community_levy_rate,
       IFNULL(solidarity_levy_rate, 0)  AS solidarity_levy_rate,
       IFNULL(consumption_tax_rate, 0)  AS consumption_tax_rate,
       IFNULL(rrr_rate, 0)              AS rrr_rate,
       IFNULL(rcp_rate, 0)              AS rcp_rate,
       cumulative_with_tax,
       cumulative_without_tax
FROM customs_tariff
WHERE deleted = 0
ORDER BY code`

	QueryExemptions string = `SELECT code, exempt
FROM coc_exemption
WHERE deleted = 0
ORDER BY code`

	QueryPortFees string = `SELECT category, rate, IFNULL(municipal_rate, 0) AS municipal_rate
FROM port_fee
WHERE deleted = 0
ORDER BY category`

	QueryTariffCount string = `SELECT COUNT(1) FROM customs_tariff WHERE deleted = 0`
)

// Schema creates the reference tables when they do not exist.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS customs_tariff (
    code                   VARCHAR(32)    NOT NULL PRIMARY KEY,
    description            VARCHAR(512)   NULL,
    duty_rate              DECIMAL(10, 4) NULL,
    statistics_rate        DECIMAL(10, 4) NULL,
    community_levy_rate    DECIMAL(10, 4) NULL,
    solidarity_levy_rate   DECIMAL(10, 4) NULL,
    consumption_tax_rate   DECIMAL(10, 4) NULL,
    rrr_rate               DECIMAL(10, 4) NULL,
    rcp_rate               DECIMAL(10, 4) NULL,
    cumulative_with_tax    DECIMAL(10, 4) NOT NULL,
    cumulative_without_tax DECIMAL(10, 4) NOT NULL,
    deleted                TINYINT(1)     NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS coc_exemption (
    code    VARCHAR(32) NOT NULL PRIMARY KEY,
    exempt  TINYINT(1)  NOT NULL DEFAULT 0,
    deleted TINYINT(1)  NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS port_fee (
    category       VARCHAR(64)    NOT NULL PRIMARY KEY,
    rate           DECIMAL(14, 4) NOT NULL,
    municipal_rate DECIMAL(14, 4) NULL,
    deleted        TINYINT(1)     NOT NULL DEFAULT 0
)`,
}

// Upserts, bound by the db tags of the engine entries.
const (
	UpsertTariff string = `INSERT INTO customs_tariff (code, description, duty_rate, statistics_rate, community_levy_rate,
                            solidarity_levy_rate, consumption_tax_rate, rrr_rate, rcp_rate,
                            cumulative_with_tax, cumulative_without_tax, deleted)
VALUES (:code, :description, :duty_rate, :statistics_rate, :community_levy_rate,
        :solidarity_levy_rate, :consumption_tax_rate, :rrr_rate, :rcp_rate,
        :cumulative_with_tax, :cumulative_without_tax, 0)
ON DUPLICATE KEY UPDATE description            = VALUES(description),
                        duty_rate              = VALUES(duty_rate),
                        statistics_rate        = VALUES(statistics_rate),
                        community_levy_rate    = VALUES(community_levy_rate),
                        solidarity_levy_rate   = VALUES(solidarity_levy_rate),
                        consumption_tax_rate   = VALUES(consumption_tax_rate),
                        rrr_rate               = VALUES(rrr_rate),
                        rcp_rate               = VALUES(rcp_rate),
                        cumulative_with_tax    = VALUES(cumulative_with_tax),
                        cumulative_without_tax = VALUES(cumulative_without_tax),
                        deleted                = 0`

	UpsertExemption string = `INSERT INTO coc_exemption (code, exempt, deleted)
VALUES (:code, :exempt, 0)
ON DUPLICATE KEY UPDATE exempt = VALUES(exempt), deleted = 0`

	UpsertPortFee string = `INSERT INTO port_fee (category, rate, municipal_rate, deleted)
VALUES (:category, :rate, :municipal_rate, 0)
ON DUPLICATE KEY UPDATE rate = VALUES(rate), municipal_rate = VALUES(municipal_rate), deleted = 0`
)
