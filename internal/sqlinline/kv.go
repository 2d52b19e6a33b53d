package sqlinline

const QSelectKV = `--sql 3d3339c3-b4a6-4259-8fda-3f2eee8d4b8e
select value
from ledger_kv
where key = $1::text;
`

const QUpsertKV = `--sql 021b7eba-1b42-4ef5-8a0a-cb8668a2c213
insert into ledger_kv(key, value, created_at, updated_at)
values ($1::text, $2::bytea, now(), now())
on conflict (key) do update
set value = excluded.value,
    updated_at = now();
`
