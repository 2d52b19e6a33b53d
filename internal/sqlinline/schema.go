package sqlinline

const QCreateKVTable = `--sql 3423d65f-c2a3-4a9b-802f-7ab749be39e6
create table if not exists ledger_kv (
    key        text primary key,
    value      bytea not null,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);
`
